package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRocketReq(t *testing.T) {
	assert.Empty(t, validateRocketReq(rocketReq{Name: "Falcon Heavy", IsActive: true}))
	assert.NotEmpty(t, validateRocketReq(rocketReq{Name: ""}))
	assert.NotEmpty(t, validateRocketReq(rocketReq{Name: "   "}))
	assert.NotEmpty(t, validateRocketReq(rocketReq{Name: strings.Repeat("x", 101)}))
	assert.Empty(t, validateRocketReq(rocketReq{Name: strings.Repeat("x", 100)}))

	// Multibyte names are measured in characters, not bytes.
	assert.Empty(t, validateRocketReq(rocketReq{Name: strings.Repeat("é", 100)}))
	assert.NotEmpty(t, validateRocketReq(rocketReq{Name: strings.Repeat("é", 101)}))
}
