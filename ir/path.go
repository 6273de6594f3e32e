package ir

import (
	"strconv"
	"strings"
)

// FieldFrag returns the path fragment selecting field f.
func FieldFrag(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return "." + f
	}
	return ".'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// IndexFrag returns the path fragment selecting index i.
func IndexFrag(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
