// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"fmt"
	"strings"
)

// MechFlag describes how the glue layer must treat a mechanism.
type MechFlag uint32

const (
	// MechUsesGenericNames marks a mechanism that works with the glue layer's generic names
	// itself (SPNEGO for example).  Such mechanisms are not asked to import generic names;
	// doing so would recurse back into the glue layer.
	MechUsesGenericNames MechFlag = 1 << iota
)

func (f MechFlag) String() string {
	if f == 0 {
		return "0"
	}

	var names []string
	if f&MechUsesGenericNames != 0 {
		names = append(names, "UsesGenericNames")
		f &^= MechUsesGenericNames
	}

	if f != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(f)))
	}

	return strings.Join(names, "|")
}
