package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"arrtag/internal/arr"
)

const arrCheckTimeout = 5 * time.Second

// CheckArr verifies that a Sonarr or Radarr instance is reachable and accepts
// the API key.
func CheckArr(ctx context.Context, name, baseURL, apiKey string, opts ...arr.Option) Result {
	if strings.TrimSpace(baseURL) == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	client, err := arr.New(baseURL, apiKey, append([]arr.Option{arr.WithTimeout(arrCheckTimeout)}, opts...)...)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, arrCheckTimeout)
	defer cancel()

	status, err := client.SystemStatus(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeArrError(err)}
	}
	detail := "Reachable"
	if status.AppName != "" || status.Version != "" {
		detail = strings.TrimSpace(fmt.Sprintf("%s %s", status.AppName, status.Version))
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeArrError(err error) string {
	var statusErr *arr.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "auth failed (invalid api key)"
		default:
			return fmt.Sprintf("status check failed (%d)", statusErr.StatusCode)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "status check timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "status check timed out"
	}
	return fmt.Sprintf("unreachable (%v)", err)
}
