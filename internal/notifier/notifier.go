package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	// ErrRendererNotRunning is returned when no live widget renderer is found
	ErrRendererNotRunning = errors.New("lockclock-widget is not running")
)

// Signaler delivers the "settings changed" signal to the widget renderer
type Signaler interface {
	Notify(ctx context.Context, key string) error
}

// Notifier signals the renderer found through its lockfile
type Notifier struct {
	lockfileDir string
	httpClient  *http.Client
}

// SignalPayload is the body posted to the renderer
type SignalPayload struct {
	Event string `json:"event"`
	Key   string `json:"key"`
	ID    string `json:"id"`
}

// New creates a notifier. An empty lockfileDir uses the renderer's default config dir.
func New(lockfileDir string) *Notifier {
	return &Notifier{
		lockfileDir: lockfileDir,
		httpClient:  &http.Client{Timeout: constants.WidgetSignalTimeout},
	}
}

// Notify tells the renderer that key changed
func (n *Notifier) Notify(ctx context.Context, key string) error {
	dir := n.lockfileDir
	if dir == "" {
		var err error
		dir, err = WidgetConfigDir()
		if err != nil {
			return err
		}
	}

	port, secret, err := findAndValidateWidgetProcess(filepath.Join(dir, constants.WidgetLockfileName))
	if err != nil {
		return err
	}

	payload := SignalPayload{
		Event: constants.SettingsChangedEvent,
		Key:   key,
		ID:    uuid.New().String(),
	}
	if err := n.send(ctx, port, secret, payload); err != nil {
		return err
	}
	logger.Debug("Widget signaled", "key", key, "id", payload.ID)
	return nil
}

// WidgetConfigDir returns the renderer's configuration directory
func WidgetConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.WidgetAppIdentifier), nil
}

// findAndValidateWidgetProcess parses a port|pid|secret lockfile and checks
// that pid belongs to a running renderer.
func findAndValidateWidgetProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrRendererNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrRendererNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.WidgetProcessName) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.WidgetProcessName, process.Executable())
	}

	return port, secret, nil
}

func (n *Notifier) send(ctx context.Context, port, secret string, payload SignalPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.WidgetSecretHeader, secret)

	res, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK || res.StatusCode == http.StatusNoContent {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("signal failed with status %d: %s", res.StatusCode, string(body))
}
