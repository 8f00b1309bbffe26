package setting

import (
	"strconv"
	"strings"
)

const (
	InsecureName    = "insecure"
	TimeoutName     = "timeout"
	RedirectionName = "redirection"
	HTTPVersionName = "http_version"
	IPVersionName   = "ip_version"
	UserAgentName   = "user_agent"
	RetryName       = "retry"
	DelayName       = "delay"
)

// Insecure disables TLS certificate verification when enabled.
type Insecure struct {
	Enabled bool
}

func parseInsecure(value string) (Setting, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return nil, false
	}
	return &Insecure{Enabled: b}, true
}

func (i *Insecure) Name() string       { return InsecureName }
func (i *Insecure) Key() string        { return "" }
func (i *Insecure) Behavior() Behavior { return Overwrite }
func (i *Insecure) Value() string      { return strconv.FormatBool(i.Enabled) }

func (i *Insecure) Arguments() []string {
	if !i.Enabled {
		return nil
	}
	return []string{"--insecure"}
}

// Timeout limits connection and total transfer time, in seconds.
//
//	timeout=connect:5,max:30
type Timeout struct {
	ConnectSeconds int
	MaxSeconds     int
}

func parseTimeout(value string) (Setting, bool) {
	c, ok := parseComposite(value)
	if !ok {
		return nil, false
	}
	return &Timeout{ConnectSeconds: c.integer("connect"), MaxSeconds: c.integer("max")}, true
}

func (t *Timeout) Name() string       { return TimeoutName }
func (t *Timeout) Key() string        { return "" }
func (t *Timeout) Behavior() Behavior { return Overwrite }

func (t *Timeout) Value() string {
	w := &compositeWriter{}
	w.addInt("connect", t.ConnectSeconds).addInt("max", t.MaxSeconds)
	return w.String()
}

func (t *Timeout) Arguments() []string {
	var args []string
	if t.ConnectSeconds > 0 {
		args = append(args, "--connect-timeout", strconv.Itoa(t.ConnectSeconds))
	}
	if t.MaxSeconds > 0 {
		args = append(args, "--max-time", strconv.Itoa(t.MaxSeconds))
	}
	return args
}

// Redirection controls whether hurl follows redirects.
//
//	redirection=enabled:true,trusted:false,max:10
type Redirection struct {
	Enabled bool
	Trusted bool
	Max     int
}

func parseRedirection(value string) (Setting, bool) {
	c, ok := parseComposite(value)
	if !ok {
		return nil, false
	}
	return &Redirection{Enabled: c.boolean("enabled"), Trusted: c.boolean("trusted"), Max: c.integer("max")}, true
}

func (r *Redirection) Name() string       { return RedirectionName }
func (r *Redirection) Key() string        { return "" }
func (r *Redirection) Behavior() Behavior { return Overwrite }

func (r *Redirection) Value() string {
	w := &compositeWriter{}
	w.addBool("enabled", r.Enabled).addBool("trusted", r.Trusted).addInt("max", r.Max)
	return w.String()
}

func (r *Redirection) Arguments() []string {
	if !r.Enabled {
		return nil
	}
	args := []string{"--location"}
	if r.Trusted {
		args[0] = "--location-trusted"
	}
	if r.Max > 0 {
		args = append(args, "--max-redirs", strconv.Itoa(r.Max))
	}
	return args
}

var httpVersionFlags = map[string]string{
	"1.0": "--http1.0",
	"1.1": "--http1.1",
	"2":   "--http2",
	"3":   "--http3",
}

// HTTPVersion pins the HTTP protocol version.
type HTTPVersion struct {
	Version string
}

func parseHTTPVersion(value string) (Setting, bool) {
	v := strings.TrimSpace(value)
	if _, ok := httpVersionFlags[v]; !ok {
		return nil, false
	}
	return &HTTPVersion{Version: v}, true
}

func (h *HTTPVersion) Name() string       { return HTTPVersionName }
func (h *HTTPVersion) Key() string        { return "" }
func (h *HTTPVersion) Behavior() Behavior { return Overwrite }
func (h *HTTPVersion) Value() string      { return h.Version }

func (h *HTTPVersion) Arguments() []string {
	flag, ok := httpVersionFlags[h.Version]
	if !ok {
		return nil
	}
	return []string{flag}
}

// IPVersion restricts name resolution to IPv4 or IPv6.
type IPVersion struct {
	Version int
}

func parseIPVersion(value string) (Setting, bool) {
	switch strings.TrimSpace(value) {
	case "4":
		return &IPVersion{Version: 4}, true
	case "6":
		return &IPVersion{Version: 6}, true
	}
	return nil, false
}

func (i *IPVersion) Name() string       { return IPVersionName }
func (i *IPVersion) Key() string        { return "" }
func (i *IPVersion) Behavior() Behavior { return Overwrite }
func (i *IPVersion) Value() string      { return strconv.Itoa(i.Version) }

func (i *IPVersion) Arguments() []string {
	switch i.Version {
	case 4:
		return []string{"--ipv4"}
	case 6:
		return []string{"--ipv6"}
	}
	return nil
}

// UserAgent overrides the User-Agent header.
type UserAgent struct {
	Agent string
}

func parseUserAgent(value string) (Setting, bool) {
	agent, ok := plain(value)
	if !ok {
		return nil, false
	}
	return &UserAgent{Agent: agent}, true
}

func (u *UserAgent) Name() string        { return UserAgentName }
func (u *UserAgent) Key() string         { return "" }
func (u *UserAgent) Behavior() Behavior  { return Overwrite }
func (u *UserAgent) Value() string       { return u.Agent }
func (u *UserAgent) Arguments() []string { return flagWithValue("--user-agent", u.Agent) }

// Retry re-runs failing asserts. Count -1 retries forever.
//
//	retry=count:3,interval:1000
type Retry struct {
	Count          int
	IntervalMillis int
}

func parseRetry(value string) (Setting, bool) {
	c, ok := parseComposite(value)
	if !ok {
		return nil, false
	}
	return &Retry{Count: c.integer("count"), IntervalMillis: c.integer("interval")}, true
}

func (r *Retry) Name() string       { return RetryName }
func (r *Retry) Key() string        { return "" }
func (r *Retry) Behavior() Behavior { return Overwrite }

func (r *Retry) Value() string {
	w := &compositeWriter{}
	w.addInt("count", r.Count).addInt("interval", r.IntervalMillis)
	return w.String()
}

func (r *Retry) Arguments() []string {
	if r.Count == 0 || r.Count < -1 {
		return nil
	}
	args := []string{"--retry", strconv.Itoa(r.Count)}
	if r.IntervalMillis > 0 {
		args = append(args, "--retry-interval", strconv.Itoa(r.IntervalMillis))
	}
	return args
}

// Delay waits before each request, in milliseconds.
type Delay struct {
	Millis int
}

func parseDelay(value string) (Setting, bool) {
	ms, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || ms < 0 {
		return nil, false
	}
	return &Delay{Millis: ms}, true
}

func (d *Delay) Name() string       { return DelayName }
func (d *Delay) Key() string        { return "" }
func (d *Delay) Behavior() Behavior { return Overwrite }
func (d *Delay) Value() string      { return strconv.Itoa(d.Millis) }

func (d *Delay) Arguments() []string {
	if d.Millis <= 0 {
		return nil
	}
	return []string{"--delay", strconv.Itoa(d.Millis)}
}
