//go:build windows

package apps

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// fileDescription reads the FileDescription string from the version
// resource of an executable. It returns "" when there is none.
func fileDescription(path string) string {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil || size == 0 {
		return ""
	}
	buf := make([]byte, size)
	block := unsafe.Pointer(&buf[0])
	if err := windows.GetFileVersionInfo(path, 0, size, block); err != nil {
		return ""
	}

	// first language/codepage pair, US English Unicode otherwise
	lang, codepage := uint16(0x0409), uint16(0x04b0)
	var trans unsafe.Pointer
	var transLen uint32
	if err := windows.VerQueryValue(block, `\VarFileInfo\Translation`, unsafe.Pointer(&trans), &transLen); err == nil && transLen >= 4 {
		lang = *(*uint16)(trans)
		codepage = *(*uint16)(unsafe.Add(trans, 2))
	}

	key := fmt.Sprintf(`\StringFileInfo\%04x%04x\FileDescription`, lang, codepage)
	var value unsafe.Pointer
	var valueLen uint32
	if err := windows.VerQueryValue(block, key, unsafe.Pointer(&value), &valueLen); err != nil || valueLen == 0 {
		return ""
	}
	return windows.UTF16PtrToString((*uint16)(value))
}
