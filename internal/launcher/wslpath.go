package launcher

import (
	"strings"
	"unicode"
)

// Path translation between the Windows host convention and the WSL
// virtualized filesystem. Both directions are pure string functions so the
// mapping is testable without any OS call.

const wslMountPrefix = "/mnt/"

// ToWSLPath converts a Windows path like `C:\Users\me\proj` into the WSL
// form `/mnt/c/Users/me/proj`. Paths without a drive letter are returned
// with separators normalized only.
func ToWSLPath(winPath string) string {
	normalized := strings.ReplaceAll(winPath, `\`, "/")

	if len(normalized) >= 2 && normalized[1] == ':' && isDriveLetter(rune(normalized[0])) {
		drive := unicode.ToLower(rune(normalized[0]))
		rest := strings.TrimPrefix(normalized[2:], "/")
		if rest == "" {
			return wslMountPrefix + string(drive)
		}
		return wslMountPrefix + string(drive) + "/" + rest
	}

	return normalized
}

// ToWindowsPath converts a WSL path like `/mnt/c/Users/me` into the host
// form `C:\Users\me`. Paths outside /mnt/<drive> are returned with
// separators flipped only.
func ToWindowsPath(wslPath string) string {
	if strings.HasPrefix(wslPath, wslMountPrefix) {
		rest := wslPath[len(wslMountPrefix):]
		if rest != "" && isDriveLetter(rune(rest[0])) && (len(rest) == 1 || rest[1] == '/') {
			drive := unicode.ToUpper(rune(rest[0]))
			tail := strings.TrimPrefix(rest[1:], "/")
			if tail == "" {
				return string(drive) + `:\`
			}
			return string(drive) + `:\` + strings.ReplaceAll(tail, "/", `\`)
		}
	}

	return strings.ReplaceAll(wslPath, "/", `\`)
}

func isDriveLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
