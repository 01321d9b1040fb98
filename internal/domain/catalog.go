package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ServiceTag is a value from the global service catalog
type ServiceTag string

// DefaultServiceTags is the catalog used when configuration does not override it
var DefaultServiceTags = []string{
	"Coffee Date",
	"Dinner Companion",
	"City Tour",
	"Event Companion",
	"Museum Visit",
	"Shopping Companion",
	"Walk in the Park",
	"Concert Companion",
	"Travel Companion",
	"Language Exchange",
}

// ServiceCatalog is a closed set of selectable service tags
type ServiceCatalog struct {
	tags []ServiceTag
	set  map[ServiceTag]struct{}
}

// NewServiceCatalog builds a catalog, rejecting blank and duplicate names
func NewServiceCatalog(names []string) (*ServiceCatalog, error) {
	if len(names) == 0 {
		return nil, errors.New("domain: service catalog is empty")
	}
	c := &ServiceCatalog{
		tags: make([]ServiceTag, 0, len(names)),
		set:  make(map[ServiceTag]struct{}, len(names)),
	}
	for _, name := range names {
		tag := ServiceTag(strings.TrimSpace(name))
		if tag == "" {
			return nil, errors.New("domain: service catalog contains a blank name")
		}
		if _, dup := c.set[tag]; dup {
			return nil, fmt.Errorf("domain: duplicate service %q in catalog", tag)
		}
		c.set[tag] = struct{}{}
		c.tags = append(c.tags, tag)
	}
	return c, nil
}

// Tags returns catalog entries in configured order
func (c *ServiceCatalog) Tags() []ServiceTag {
	out := make([]ServiceTag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Contains reports whether the tag belongs to the catalog
func (c *ServiceCatalog) Contains(tag ServiceTag) bool {
	_, ok := c.set[tag]
	return ok
}

// ValidateSubset checks every tag belongs to the catalog
func (c *ServiceCatalog) ValidateSubset(tags ServiceTags) error {
	for _, tag := range tags {
		if !c.Contains(tag) {
			return fmt.Errorf("%w: %q is not in the service catalog", ErrInvalidService, tag)
		}
	}
	return nil
}

// ServiceTags is an order-insensitive set of service tags
type ServiceTags []ServiceTag

// NewServiceTags builds a normalized set from raw strings
func NewServiceTags(values []string) ServiceTags {
	tags := make(ServiceTags, 0, len(values))
	for _, v := range values {
		tags = append(tags, ServiceTag(strings.TrimSpace(v)))
	}
	return tags.Normalize()
}

// Normalize removes duplicates and blanks and sorts the tags
func (t ServiceTags) Normalize() ServiceTags {
	seen := make(map[ServiceTag]struct{}, len(t))
	out := make(ServiceTags, 0, len(t))
	for _, tag := range t {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether the set includes tag
func (t ServiceTags) Contains(tag ServiceTag) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// SubsetOf checks every tag is present in allowed; the first missing tag is reported
func (t ServiceTags) SubsetOf(allowed ServiceTags) error {
	for _, tag := range t {
		if !allowed.Contains(tag) {
			return fmt.Errorf("%w: %q is not registered for this companion", ErrInvalidService, tag)
		}
	}
	return nil
}

// Strings converts tags for storage
func (t ServiceTags) Strings() []string {
	out := make([]string, len(t))
	for i, tag := range t {
		out[i] = string(tag)
	}
	return out
}
