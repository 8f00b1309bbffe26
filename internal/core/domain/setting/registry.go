package setting

import "fmt"

// Kind describes one registered setting kind.
type Kind struct {
	Name     string
	Behavior Behavior
	// Description is a one-line summary shown by the CLI.
	Description string

	parse func(value string) (Setting, bool)
	zero  func() Setting
}

// Parse builds a setting of this kind from a configuration value.
func (k Kind) Parse(value string) (Setting, bool) {
	return k.parse(value)
}

// kinds is the closed table of setting kinds, in display order.
var kinds = []Kind{
	{Name: ProxyName, Behavior: Overwrite, Description: "proxy server", parse: parseProxy, zero: func() Setting { return &Proxy{} }},
	{Name: NoProxyName, Behavior: Overwrite, Description: "hosts bypassing the proxy", parse: parseNoProxy, zero: func() Setting { return &NoProxy{} }},
	{Name: FileRootName, Behavior: Overwrite, Description: "root directory for file references", parse: parseFileRoot, zero: func() Setting { return &FileRoot{} }},
	{Name: CaCertName, Behavior: Overwrite, Description: "CA certificate bundle", parse: parseCaCert, zero: func() Setting { return &CaCert{} }},
	{Name: ClientCertificateName, Behavior: Overwrite, Description: "TLS client certificate", parse: parseClientCertificate, zero: func() Setting { return &ClientCertificate{} }},
	{Name: AwsSigV4Name, Behavior: Overwrite, Description: "AWS SigV4 request signing", parse: parseAwsSigV4, zero: func() Setting { return &AwsSigV4{} }},
	{Name: VariableName, Behavior: Merge, Description: "template variable", parse: parseVariable, zero: func() Setting { return &Variable{} }},
	{Name: InsecureName, Behavior: Overwrite, Description: "skip TLS verification", parse: parseInsecure, zero: func() Setting { return &Insecure{} }},
	{Name: TimeoutName, Behavior: Overwrite, Description: "connect and total timeouts", parse: parseTimeout, zero: func() Setting { return &Timeout{} }},
	{Name: RedirectionName, Behavior: Overwrite, Description: "redirect handling", parse: parseRedirection, zero: func() Setting { return &Redirection{} }},
	{Name: HTTPVersionName, Behavior: Overwrite, Description: "HTTP protocol version", parse: parseHTTPVersion, zero: func() Setting { return &HTTPVersion{Version: "1.1"} }},
	{Name: IPVersionName, Behavior: Overwrite, Description: "IP protocol version", parse: parseIPVersion, zero: func() Setting { return &IPVersion{Version: 4} }},
	{Name: UserAgentName, Behavior: Overwrite, Description: "User-Agent header", parse: parseUserAgent, zero: func() Setting { return &UserAgent{} }},
	{Name: RetryName, Behavior: Overwrite, Description: "assert retries", parse: parseRetry, zero: func() Setting { return &Retry{} }},
	{Name: DelayName, Behavior: Overwrite, Description: "delay before each request", parse: parseDelay, zero: func() Setting { return &Delay{} }},
	{Name: VariablesFileName, Behavior: Overwrite, Description: "variables properties file", parse: parseVariablesFile, zero: func() Setting { return &VariablesFile{} }},
	{Name: CustomArgumentName, Behavior: Merge, Description: "raw hurl arguments", parse: parseCustomArgument, zero: func() Setting { return &CustomArgument{} }},
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for _, k := range kinds {
		if _, dup := m[k.Name]; dup {
			panic("setting: duplicate kind " + k.Name)
		}
		m[k.Name] = k
	}
	return m
}()

// Lookup returns the kind registered under name.
func Lookup(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// Kinds returns the registered kinds in display order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Names returns the registered configuration names in display order.
func Names() []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	return names
}

// Create parses value as a setting of kind name.
//
// It returns ErrUnknownKind for an unregistered name and ErrNoMatch when
// the value yields no setting; both are meant to be handled, not fatal.
func Create(name, value string) (Setting, error) {
	k, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	s, ok := k.parse(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s=%q", ErrNoMatch, name, value)
	}
	return s, nil
}

// Default returns a setting of kind name filled with default values, the
// starting point for interactive creation.
func Default(name string) (Setting, error) {
	k, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k.zero(), nil
}

// Display returns the short text shown next to a setting's name.
func Display(s Setting) string {
	if d, ok := s.(interface{ Display() string }); ok {
		return d.Display()
	}
	return s.Value()
}
