package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCaptcha(t *testing.T) {
	for i := 0; i < 100; i++ {
		captcha := NewCaptcha()
		assert.Len(t, captcha, CaptchaLength)
		for _, c := range captcha {
			assert.True(t, strings.ContainsRune(captchaChars, c), "unexpected captcha character %q", c)
		}
	}
}
