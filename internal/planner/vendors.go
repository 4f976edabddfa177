package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// VendorKind names one of the backend's vendor directories.
type VendorKind string

const (
	Venues           VendorKind = "venues"
	Caterers         VendorKind = "caterers"
	Decorators       VendorKind = "decorators"
	ServiceProviders VendorKind = "service_providers"
)

// VendorKinds lists every directory in display order.
var VendorKinds = []VendorKind{Venues, Caterers, Decorators, ServiceProviders}

// Title returns the heading used for the kind.
func (k VendorKind) Title() string {
	switch k {
	case Venues:
		return "Venues"
	case Caterers:
		return "Caterers"
	case Decorators:
		return "Decorators"
	case ServiceProviders:
		return "Service Providers"
	default:
		return string(k)
	}
}

// ParseVendorKind accepts a kind name case-insensitively, with '-' or ' '
// in place of '_'.
func ParseVendorKind(s string) (VendorKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, k := range VendorKinds {
		if string(k) == norm {
			return k, nil
		}
	}
	names := make([]string, len(VendorKinds))
	for i, k := range VendorKinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unknown vendor kind %q (want one of %s)", s, strings.Join(names, ", "))
}

// Vendor is one directory row. The backend returns database rows whose
// columns differ per directory, so they are kept as-is.
type Vendor map[string]any

var nameKeys = []string{"name", "vendor_name", "business_name", "company_name", "title"}

// DisplayName returns the first non-empty name-like column, then the id,
// then "(unnamed)".
func (v Vendor) DisplayName() string {
	for _, k := range nameKeys {
		if s := formatValue(v[k]); s != "" {
			return s
		}
	}
	if s := formatValue(v["id"]); s != "" {
		return "#" + s
	}
	return "(unnamed)"
}

// VendorField is one column of a vendor row rendered as text.
type VendorField struct {
	Key   string
	Value string
}

// Fields returns the row's non-empty columns sorted by key, without the
// column used for DisplayName.
func (v Vendor) Fields() []VendorField {
	skip := ""
	for _, k := range nameKeys {
		if formatValue(v[k]) != "" {
			skip = k
			break
		}
	}

	keys := make([]string, 0, len(v))
	for k := range v {
		if k != skip {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	fields := make([]VendorField, 0, len(keys))
	for _, k := range keys {
		if s := formatValue(v[k]); s != "" {
			fields = append(fields, VendorField{Key: k, Value: s})
		}
	}
	return fields
}

func formatValue(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}

// ListVendors fetches one vendor directory.
func (c *Client) ListVendors(ctx context.Context, kind VendorKind) ([]Vendor, error) {
	fallback := "Failed to fetch " + strings.ToLower(kind.Title()) + "."
	data, err := c.do(ctx, http.MethodGet, "/api/agent/"+string(kind), nil, fallback)
	if err != nil {
		return nil, err
	}

	var vendors []Vendor
	if err := json.Unmarshal(data, &vendors); err != nil {
		c.logger.Warn("undecodable vendor list", "kind", kind, "error", err)
		return nil, &DecodeError{Err: fmt.Errorf("decoding %s: %w", kind, err)}
	}

	c.logger.Info("vendors received", "kind", kind, "count", len(vendors))
	return vendors, nil
}
