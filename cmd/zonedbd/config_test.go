package main

import (
	"strings"
	"testing"
)

func TestConfigParseZoneFlags(t *testing.T) {
	testCases := []struct {
		zoneFlags []string
		error     string // Empty means expect success
	}{
		{[]string{"example.com.=/etc/zones/example.com"}, ""},
		{[]string{"Example.Com=/etc/zones/example.com"}, ""}, // Canonicalized
		{[]string{"example.com=a", "example.org=b"}, ""},
		{nil, "at least one"},
		{[]string{"example.com"}, "origin=path"},
		{[]string{"=path"}, "origin=path"},
		{[]string{"example.com="}, "origin=path"},
		{[]string{"example.com=a", "EXAMPLE.COM.=b"}, "duplicates"},
		{[]string{"bad..name=a"}, "not a valid domain"},
	}

	for ix, tc := range testCases {
		cfg := newConfig()
		cfg.zoneFlags = tc.zoneFlags
		err := cfg.parseZoneFlags()
		if len(tc.error) == 0 {
			if err != nil {
				t.Error(ix, "Unexpected error:", err)
				continue
			}
			if len(cfg.zones) != len(tc.zoneFlags) {
				t.Error(ix, "Wrong zone count", len(cfg.zones))
			}
			for _, zc := range cfg.zones {
				if !strings.HasSuffix(zc.origin, ".") {
					t.Error(ix, "Origin not canonical", zc.origin)
				}
				if zc.getter == nil {
					t.Error(ix, "Getter not created for", zc.origin)
				}
			}
			continue
		}
		if err == nil {
			t.Error(ix, "Expected error matching", tc.error)
			continue
		}
		if !strings.Contains(err.Error(), tc.error) {
			t.Error(ix, "Wrong error. Exp", tc.error, "Got", err.Error())
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := newConfig()
	if cfg.defaultTTL != 3600 {
		t.Error("Default TTL should be 3600, not", cfg.defaultTTL)
	}
	if cfg.rrlConfig == nil {
		t.Error("An inactive rrl config should still be present")
	}
	if cfg.rrlConfig.IsActive() {
		t.Error("The default rrl config should be a no-op")
	}
}
