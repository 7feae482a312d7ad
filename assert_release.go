//go:build !debug

package ttgo

func debugAssert(bool, string) {}
