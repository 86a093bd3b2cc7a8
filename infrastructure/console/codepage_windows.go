//go:build windows

package console

import "golang.org/x/sys/windows"

// utf8CodePage is the Windows code page identifier for UTF-8
const utf8CodePage = 65001

// SetupUTF8 switches the console input and output code pages to UTF-8 so
// multi-byte file names render correctly. Failures are ignored.
func SetupUTF8() {
	_ = windows.SetConsoleCP(utf8CodePage)
	_ = windows.SetConsoleOutputCP(utf8CodePage)
}
