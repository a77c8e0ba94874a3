// Package launcher hands a URL to the desktop's default opener.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// OS opens targets with the platform's default handler.
type OS struct{}

func (OS) Open(ctx context.Context, target string) error {
	name, args, err := Command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := exec.CommandContext(ctx, name, args...).Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// Command returns the opener invocation for goos.
func Command(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}
