package io

import (
	"errors"

	"github.com/ezrec/synacor/translate"
)

var f = translate.From

var (
	// Console errors
	ErrInputClosed  = errors.New(f("input closed"))
	ErrOutputClosed = errors.New(f("output closed"))

	// Image errors
	ErrRomFull = errors.New(f("image exceeds rom"))
)
