package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{url: "https://boards.greenhouse.io/acme/jobs/123", want: PlatformGreenhouse},
		{url: "https://jobs.lever.co/acme/abc-def", want: PlatformLever},
		{url: "https://acme.wd1.myworkdayjobs.com/en-US/careers/job/123", want: PlatformWorkday},
		{url: "https://careers.example.com/jobs/123", want: PlatformUnknown},
		{url: "::bad::", want: PlatformUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.url), tt.url)
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	for _, platform := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		selectors := PlatformNoiseSelectors(platform)
		assert.Contains(t, selectors, "form", "application forms are always noise for %s", platform)
		assert.Contains(t, selectors, ".eeo-statement")
	}
}
