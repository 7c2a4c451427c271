package service

import "math/rand/v2"

const captchaChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CaptchaLength is the number of characters in a generated captcha.
const CaptchaLength = 6

// NewCaptcha generates a 6-character challenge string (A-Z, 0-9). The
// server keeps no record of it: registration sends the challenge back
// alongside the user's input and the two are compared verbatim.
func NewCaptcha() string {
	buf := make([]byte, CaptchaLength)
	for i := range buf {
		buf[i] = captchaChars[rand.IntN(len(captchaChars))]
	}
	return string(buf)
}
