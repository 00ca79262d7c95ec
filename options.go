// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

type Options struct {
	group       bool
	precision   int
	superscript bool
	trace       bool
}

var options = Options{
	precision:   12,
	superscript: true, // Default to using superscript
}
