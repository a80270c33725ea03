// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/nftledger/fault"
)

// TokenMetadata - descriptive fields supplied at mint time
//
// none of these are interpreted by the ledger
type TokenMetadata struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Media         *string `json:"media"`
	MediaHash     *string `json:"media_hash"`
	Copies        *uint64 `json:"copies"`
	IssuedAt      *string `json:"issued_at"`
	ExpiresAt     *string `json:"expires_at"`
	StartsAt      *string `json:"starts_at"`
	UpdatedAt     *string `json:"updated_at"`
	Extra         *string `json:"extra"`
	Reference     *string `json:"reference"`
	ReferenceHash *string `json:"reference_hash"`
}

// Pack - pack token metadata
func (m *TokenMetadata) Pack() (Packed, error) {
	p := newPacker(TokenMetadataTag)
	p.optional(m.Title)
	p.optional(m.Description)
	p.optional(m.Media)
	p.optional(m.MediaHash)
	p.optionalNumber(m.Copies)
	p.optional(m.IssuedAt)
	p.optional(m.ExpiresAt)
	p.optional(m.StartsAt)
	p.optional(m.UpdatedAt)
	p.optional(m.Extra)
	p.optional(m.Reference)
	p.optional(m.ReferenceHash)
	return p.buffer, nil
}

// UnpackTokenMetadata - unpack a record that must be token metadata
func UnpackTokenMetadata(buffer []byte) (*TokenMetadata, error) {
	r, _, err := Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	m, ok := r.(*TokenMetadata)
	if !ok {
		return nil, fault.NotPackedRecord
	}
	return m, nil
}

// ContractMetadata - the singleton describing the whole collection
type ContractMetadata struct {
	Spec          string  `json:"spec"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Icon          *string `json:"icon"`
	BaseUri       *string `json:"base_uri"`
	Reference     *string `json:"reference"`
	ReferenceHash *string `json:"reference_hash"`
}

// Pack - pack contract metadata
func (c *ContractMetadata) Pack() (Packed, error) {
	if "" == c.Spec || "" == c.Name || "" == c.Symbol {
		return nil, fault.MissingParameters
	}
	p := newPacker(ContractMetadataTag)
	p.string(c.Spec)
	p.string(c.Name)
	p.string(c.Symbol)
	p.optional(c.Icon)
	p.optional(c.BaseUri)
	p.optional(c.Reference)
	p.optional(c.ReferenceHash)
	return p.buffer, nil
}

// UnpackContractMetadata - unpack a record that must be contract metadata
func UnpackContractMetadata(buffer []byte) (*ContractMetadata, error) {
	r, _, err := Packed(buffer).Unpack()
	if nil != err {
		return nil, err
	}
	c, ok := r.(*ContractMetadata)
	if !ok {
		return nil, fault.NotPackedRecord
	}
	return c, nil
}
