package classifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPAddrKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    string
		want IPKind
	}{
		{s: "192.168.1.1", want: IPv4},
		{s: "192.168.1", want: BadAddress},
		{s: "www.example.com", want: NotIP},
		{s: "2001:db8::1", want: IPv6},
		{s: "::ffff:10.0.0.1", want: IPv4InIPv6},
		{s: "host:8080x", want: BadAddress},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IPAddrKind(tt.s), tt.s)
	}
}

func TestIsAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAddress("192.0.2.1"))
	assert.True(t, IsAddress("2001:db8::1"))
	assert.False(t, IsAddress("192.0.2"))
	assert.False(t, IsAddress("www.example.com"))
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host   string
		labels int
		want   string
		ok     bool
	}{
		{host: "www.cs.example.com", labels: 1, want: "example.com", ok: true},
		{host: "www.cs.example.com", labels: 2, want: "cs.example.com", ok: true},
		{host: "example.com", labels: 2, want: "example.com", ok: true},
		{host: "localhost", labels: 1, want: "localhost", ok: true},
		{host: "10.1.2.3", labels: 1, ok: false},
		{host: "2001:db8::1", labels: 1, ok: false},
	}

	for _, tt := range tests {
		got, ok := DomainOf(tt.host, tt.labels)
		assert.Equal(t, tt.ok, ok, tt.host)
		assert.Equal(t, tt.want, got, tt.host)
	}
}
