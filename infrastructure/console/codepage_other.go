//go:build !windows

package console

// SetupUTF8 is a no-op outside Windows; terminals already use UTF-8
func SetupUTF8() {}
