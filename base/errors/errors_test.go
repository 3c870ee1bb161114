// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	err := fmt.Errorf("%w: slot %q not found", ErrKey, "pos")
	assert.True(t, Is(err, ErrKey))
	assert.False(t, Is(err, ErrValue))
	assert.Equal(t, `key error: slot "pos" not found`, err.Error())
}

func TestLog1(t *testing.T) {
	v := Log1(3, nil)
	assert.Equal(t, 3, v)
	v = Log1(4, New("boom"))
	assert.Equal(t, 4, v)
	assert.Nil(t, Log(nil))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(ErrIndex) })
	assert.Equal(t, "a", Must1("a", nil))
	assert.Panics(t, func() { Must1(0, ErrType) })
	assert.Equal(t, 2, Ignore1(2, ErrType))
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.True(t, strings.Contains(info, "errors_test.go"), info)
}
