package setting

import (
	"path"
	"strings"
)

const (
	FileRootName          = "file_root"
	CaCertName            = "cacert"
	ClientCertificateName = "client_certificate"
	VariablesFileName     = "variables_file"
)

// FileRoot sets the directory hurl resolves request file references against.
type FileRoot struct {
	Directory string
}

func parseFileRoot(value string) (Setting, bool) {
	dir, ok := plain(value)
	if !ok {
		return nil, false
	}
	return &FileRoot{Directory: dir}, true
}

func (f *FileRoot) Name() string        { return FileRootName }
func (f *FileRoot) Key() string         { return "" }
func (f *FileRoot) Behavior() Behavior  { return Overwrite }
func (f *FileRoot) Value() string       { return f.Directory }
func (f *FileRoot) Arguments() []string { return flagWithValue("--file-root", f.Directory) }

// Display shows the directory without a trailing separator.
func (f *FileRoot) Display() string {
	if f.Directory == "" {
		return ""
	}
	return path.Dir(strings.ReplaceAll(f.Directory, `\`, "/") + "/")
}

// CaCert points hurl at a CA certificate bundle.
type CaCert struct {
	File string
}

func parseCaCert(value string) (Setting, bool) {
	file, ok := plain(value)
	if !ok {
		return nil, false
	}
	return &CaCert{File: file}, true
}

func (c *CaCert) Name() string        { return CaCertName }
func (c *CaCert) Key() string         { return "" }
func (c *CaCert) Behavior() Behavior  { return Overwrite }
func (c *CaCert) Value() string       { return c.File }
func (c *CaCert) Arguments() []string { return flagWithValue("--cacert", c.File) }

// ClientCertificate configures TLS client authentication.
//
//	client_certificate=cert:client.pem,key:client.key,password:secret
type ClientCertificate struct {
	CertificateFile string
	KeyFile         string
	Password        string
}

func parseClientCertificate(value string) (Setting, bool) {
	c, ok := parseComposite(value)
	if !ok {
		return nil, false
	}
	return &ClientCertificate{
		CertificateFile: c.str("cert"),
		KeyFile:         c.str("key"),
		Password:        c.str("password"),
	}, true
}

func (c *ClientCertificate) Name() string       { return ClientCertificateName }
func (c *ClientCertificate) Key() string        { return "" }
func (c *ClientCertificate) Behavior() Behavior { return Overwrite }

func (c *ClientCertificate) Value() string {
	w := &compositeWriter{}
	w.add("cert", c.CertificateFile).
		addOptional("key", c.KeyFile).
		addOptional("password", c.Password)
	return w.String()
}

func (c *ClientCertificate) Arguments() []string {
	if strings.TrimSpace(c.CertificateFile) == "" {
		return nil
	}
	cert := c.CertificateFile
	if c.Password != "" {
		cert += ":" + c.Password
	}
	args := []string{"--cert", cert}
	return append(args, flagWithValue("--key", c.KeyFile)...)
}

// Display masks the password.
func (c *ClientCertificate) Display() string {
	masked := *c
	if masked.Password != "" {
		masked.Password = "***"
	}
	return masked.Value()
}

// VariablesFile loads hurl variables from a properties file.
type VariablesFile struct {
	File string
}

func parseVariablesFile(value string) (Setting, bool) {
	file, ok := plain(value)
	if !ok {
		return nil, false
	}
	return &VariablesFile{File: file}, true
}

func (v *VariablesFile) Name() string        { return VariablesFileName }
func (v *VariablesFile) Key() string         { return "" }
func (v *VariablesFile) Behavior() Behavior  { return Overwrite }
func (v *VariablesFile) Value() string       { return v.File }
func (v *VariablesFile) Arguments() []string { return flagWithValue("--variables-file", v.File) }
