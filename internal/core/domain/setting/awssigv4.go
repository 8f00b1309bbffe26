package setting

import "strings"

// AwsSigV4Name is the configuration name of AwsSigV4.
const AwsSigV4Name = "aws_sig_v4"

const awsSigV4Separator = ":"

// AwsSigV4 signs requests with AWS Signature Version 4.
//
//	aws_sig_v4=aws:amz:eu-central-1:sts
//
// The four fields are separated by ':' with no escaping, so a field that
// itself contains ':' cannot be represented. Parsing never fails: missing
// fields are left empty and surplus fields are dropped.
type AwsSigV4 struct {
	Provider1 string
	Provider2 string
	Region    string
	Service   string
}

func parseAwsSigV4(value string) (Setting, bool) {
	var fields [4]string
	copy(fields[:], strings.Split(value, awsSigV4Separator))
	return &AwsSigV4{
		Provider1: fields[0],
		Provider2: fields[1],
		Region:    fields[2],
		Service:   fields[3],
	}, true
}

func (a *AwsSigV4) Name() string       { return AwsSigV4Name }
func (a *AwsSigV4) Key() string        { return "" }
func (a *AwsSigV4) Behavior() Behavior { return Overwrite }

func (a *AwsSigV4) Value() string {
	return strings.Join([]string{a.Provider1, a.Provider2, a.Region, a.Service}, awsSigV4Separator)
}

// Arguments emits one composite token. Trailing empty fields are left out
// because hurl treats them as optional.
func (a *AwsSigV4) Arguments() []string {
	if strings.TrimSpace(a.Provider1) == "" {
		return nil
	}
	return []string{"--aws-sigv4=" + strings.TrimRight(a.Value(), awsSigV4Separator)}
}
