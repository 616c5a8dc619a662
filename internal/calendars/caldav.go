package calendars

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"

	"github.com/julianstephens/lockclock/internal/models"
)

// CalDAVProvider discovers the calendars of a CalDAV account
type CalDAVProvider struct {
	baseURL   string
	username  string
	password  string
	transport http.RoundTripper
}

func NewCalDAVProvider(baseURL, username, password string) *CalDAVProvider {
	return &CalDAVProvider{
		baseURL:   baseURL,
		username:  username,
		password:  password,
		transport: http.DefaultTransport,
	}
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(req)
}

func (p *CalDAVProvider) client() (*caldav.Client, error) {
	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: p.username,
			password: p.password,
			base:     p.transport,
		},
		Timeout: 30 * time.Second,
	}
	client, err := caldav.NewClient(httpClient, p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}
	return client, nil
}

// Calendars walks principal, home set and collections, in server order
func (p *CalDAVProvider) Calendars(ctx context.Context) ([]models.Calendar, error) {
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}
	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("find home set: %w", err)
	}
	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("find calendars: %w", err)
	}

	result := make([]models.Calendar, 0, len(cals))
	for _, cal := range cals {
		result = append(result, models.Calendar{
			ID:          cal.Path,
			DisplayName: caldavDisplayName(cal.Name, cal.Path),
		})
	}
	return result, nil
}

// caldavDisplayName falls back to the last path segment for unnamed collections
func caldavDisplayName(name, calPath string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return path.Base(strings.TrimRight(calPath, "/"))
}
