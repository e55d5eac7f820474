// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package protocol

import (
	"slices"
	"strings"
)

// AllowList is an ordered, duplicate-free set of versions.
// The zero value is empty. AllowList values are immutable; methods that
// derive a new list return a copy.
type AllowList struct {
	versions  []Version
	defaulted bool
}

// Normalize builds an AllowList from operator tokens, keeping first-seen
// order and dropping duplicates. An empty input yields every Known version
// and marks the list as defaulted.
func Normalize(requested []string) (AllowList, error) {
	if len(requested) == 0 {
		return Default(), nil
	}

	versions := make([]Version, 0, len(requested))
	for _, token := range requested {
		v, err := Parse(token)
		if err != nil {
			return AllowList{}, err
		}
		versions = append(versions, v)
	}
	return Of(versions...), nil
}

// Default returns the full canonical set, flagged as defaulted.
func Default() AllowList {
	return AllowList{versions: slices.Clone(Known), defaulted: true}
}

// Of builds an explicit AllowList from versions, keeping first-seen order.
// Invalid versions are skipped.
func Of(versions ...Version) AllowList {
	out := make([]Version, 0, len(versions))
	for _, v := range versions {
		if v.Valid() && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return AllowList{versions: out}
}

// Versions returns a copy of the versions in allow-list order.
func (a AllowList) Versions() []Version { return slices.Clone(a.versions) }

// Len returns the number of versions.
func (a AllowList) Len() int { return len(a.versions) }

// Contains reports whether v is allowed.
func (a AllowList) Contains(v Version) bool { return slices.Contains(a.versions, v) }

// Defaulted reports whether the list came from the implicit default rather
// than from operator input.
func (a AllowList) Defaulted() bool { return a.defaulted }

// Without returns a copy of a with v removed. The defaulted flag is kept.
func (a AllowList) Without(v Version) AllowList {
	out := make([]Version, 0, len(a.versions))
	for _, have := range a.versions {
		if have != v {
			out = append(out, have)
		}
	}
	return AllowList{versions: out, defaulted: a.defaulted}
}

// Highest returns the newest allowed version, or false for an empty list.
func (a AllowList) Highest() (Version, bool) {
	if len(a.versions) == 0 {
		return 0, false
	}
	return slices.Max(a.versions), true
}

// Lowest returns the oldest allowed version, or false for an empty list.
func (a AllowList) Lowest() (Version, bool) {
	if len(a.versions) == 0 {
		return 0, false
	}
	return slices.Min(a.versions), true
}

// Strings returns the canonical tokens in allow-list order.
func (a AllowList) Strings() []string {
	out := make([]string, len(a.versions))
	for i, v := range a.versions {
		out[i] = v.String()
	}
	return out
}

// String renders the list as "TLSv1.2, TLSv1.3".
func (a AllowList) String() string { return strings.Join(a.Strings(), ", ") }
