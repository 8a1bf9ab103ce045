package srecord

// Option configures parsing
type Option func(*parseConfig)

type parseConfig struct {
	strict bool
}

// WithStrict rejects files the default parser tolerates: mixed data record
// widths, more than one count record, records out of the header, data,
// count, start address order, and a header with a non-zero address.
func WithStrict() Option {
	return func(c *parseConfig) {
		c.strict = true
	}
}

func applyOptions(opts []Option) *parseConfig {
	c := &parseConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
