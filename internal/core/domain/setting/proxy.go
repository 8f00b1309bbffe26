package setting

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ProxyName is the configuration name of Proxy.
const ProxyName = "proxy"

// ProxyProtocol is the scheme used to reach a proxy.
type ProxyProtocol int

const (
	ProxyHTTP ProxyProtocol = iota
	ProxyHTTPS
	ProxySOCKS4
	ProxySOCKS4A
	ProxySOCKS5
	ProxySOCKS5H
)

var proxyProtocolNames = []string{"http", "https", "socks4", "socks4a", "socks5", "socks5h"}

// String returns the lower-case scheme.
func (p ProxyProtocol) String() string {
	if int(p) < 0 || int(p) >= len(proxyProtocolNames) {
		return proxyProtocolNames[ProxyHTTP]
	}
	return proxyProtocolNames[p]
}

// ParseProxyProtocol matches a scheme case-insensitively.
func ParseProxyProtocol(s string) (ProxyProtocol, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range proxyProtocolNames {
		if name == s {
			return ProxyProtocol(i), true
		}
	}
	return ProxyHTTP, false
}

// Proxy routes requests through a proxy server.
//
//	proxy=protocol:https,host:testproxy.local,port:8080,user:bob,password:secret
type Proxy struct {
	Protocol ProxyProtocol
	Host     string
	Port     int
	User     string
	Password string
}

func parseProxy(value string) (Setting, bool) {
	c, ok := parseComposite(value)
	if !ok {
		return nil, false
	}
	p := &Proxy{
		Host:     c.str("host"),
		Port:     c.integer("port"),
		User:     c.str("user"),
		Password: c.str("password"),
	}
	if protocol, ok := ParseProxyProtocol(c.str("protocol")); ok {
		p.Protocol = protocol
	}
	return p, true
}

func (p *Proxy) Name() string       { return ProxyName }
func (p *Proxy) Key() string        { return "" }
func (p *Proxy) Behavior() Behavior { return Overwrite }

func (p *Proxy) Value() string {
	w := &compositeWriter{}
	w.add("protocol", p.Protocol.String()).
		add("host", p.Host).
		addInt("port", p.Port).
		addOptional("user", p.User).
		addOptional("password", p.Password)
	return w.String()
}

// URL renders the proxy as protocol://[user[:password]@]host[:port].
func (p *Proxy) URL() string {
	host := p.Host
	if p.Port > 0 {
		host = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	}
	u := url.URL{Scheme: p.Protocol.String(), Host: host}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}
	return u.String()
}

func (p *Proxy) Arguments() []string {
	if strings.TrimSpace(p.Host) == "" {
		return nil
	}
	return []string{"--proxy", p.URL()}
}

// Display masks the password.
func (p *Proxy) Display() string {
	masked := *p
	if masked.Password != "" {
		masked.Password = "***"
	}
	return masked.Value()
}

// NoProxyName is the configuration name of NoProxy.
const NoProxyName = "no_proxy"

// NoProxy lists hosts that bypass the proxy.
//
//	no_proxy=localhost,internal.example
type NoProxy struct {
	Hosts []string
}

func parseNoProxy(value string) (Setting, bool) {
	var hosts []string
	for _, h := range strings.Split(value, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	if len(hosts) == 0 {
		return nil, false
	}
	return &NoProxy{Hosts: hosts}, true
}

func (n *NoProxy) Name() string       { return NoProxyName }
func (n *NoProxy) Key() string        { return "" }
func (n *NoProxy) Behavior() Behavior { return Overwrite }
func (n *NoProxy) Value() string      { return strings.Join(n.Hosts, ",") }

func (n *NoProxy) Arguments() []string {
	return flagWithValue("--noproxy", n.Value())
}
