package rss

import "net/url"

// Cloud describes a subscription endpoint for update notifications of a channel
type Cloud struct {
	Domain            *url.URL
	Port              int64
	Path              string
	RegisterProcedure string
	Protocol          CloudProtocol
}

// CloudBuilder accumulates fields of a Cloud
type CloudBuilder struct {
	domain            string
	port              int64
	path              string
	registerProcedure string
	protocol          string
}

// NewCloudBuilder makes an empty cloud builder
func NewCloudBuilder() *CloudBuilder {
	return &CloudBuilder{}
}

// Domain sets the domain url, validated if not empty
func (b *CloudBuilder) Domain(domain string) *CloudBuilder {
	b.domain = domain
	return b
}

// Port sets the port, must not be negative
func (b *CloudBuilder) Port(port int64) *CloudBuilder {
	b.port = port
	return b
}

// Path sets the path of the endpoint
func (b *CloudBuilder) Path(path string) *CloudBuilder {
	b.path = path
	return b
}

// RegisterProcedure sets the name of the registration procedure
func (b *CloudBuilder) RegisterProcedure(proc string) *CloudBuilder {
	b.registerProcedure = proc
	return b
}

// Protocol sets the protocol, one of xml-rpc, soap or http-post
func (b *CloudBuilder) Protocol(protocol string) *CloudBuilder {
	b.protocol = protocol
	return b
}

// Finalize validates the accumulated fields and makes a Cloud
func (b *CloudBuilder) Finalize() (Cloud, error) {
	domain, err := optionalURL("domain", b.domain)
	if err != nil {
		return Cloud{}, err
	}
	if b.port < 0 {
		return Cloud{}, &NegativeValueError{Field: "port", Value: b.port}
	}
	protocol, err := ParseCloudProtocol("protocol", b.protocol)
	if err != nil {
		return Cloud{}, err
	}
	if err := checkXMLChars("path", b.path); err != nil {
		return Cloud{}, err
	}
	if err := checkXMLChars("registerProcedure", b.registerProcedure); err != nil {
		return Cloud{}, err
	}
	return Cloud{
		Domain:            domain,
		Port:              b.port,
		Path:              b.path,
		RegisterProcedure: b.registerProcedure,
		Protocol:          protocol,
	}, nil
}

// ToBuilder makes a builder prefilled with the cloud's fields
func (c Cloud) ToBuilder() *CloudBuilder {
	return NewCloudBuilder().Domain(urlString(c.Domain)).Port(c.Port).Path(c.Path).
		RegisterProcedure(c.RegisterProcedure).Protocol(c.Protocol.String())
}

// Clone returns a deep copy of the cloud
func (c Cloud) Clone() Cloud {
	c.Domain = cloneURL(c.Domain)
	return c
}
