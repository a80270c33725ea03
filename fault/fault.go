// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CallerMismatch               = InvalidError("caller is not the authenticated account")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ClientCertificateRequiresTLS = InvalidError("client certificates need a server certificate")
	ConfigurationNotTable        = InvalidError("configuration did not return a table")
	CorruptOrWrongSchema         = RecordError("root state is corrupt or not in the expected schema")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DatabaseVersion              = InvalidError("database version is newer than this program")
	DuplicateToken               = ExistsError("token already exists")
	EmptyCode                    = InvalidError("contract code is empty")
	InsufficientStorageDeposit   = InvalidError("attached deposit does not cover storage")
	InvalidAccount               = InvalidError("invalid account id")
	InvalidAmount                = InvalidError("invalid amount")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidFingerprint           = InvalidError("invalid certificate fingerprint")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidMode                  = InvalidError("invalid mode")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MintingDisabled              = ProcessError("the mint of tokens is unavailable")
	MissingParameters            = InvalidError("missing parameters")
	NotAuthorized                = InvalidError("caller is not the contract owner")
	NotInitialised               = NotFoundError("not initialised")
	NotPayable                   = InvalidError("method does not accept a deposit")
	NotPackedRecord              = RecordError("not a packed record")
	PrivateMethod                = InvalidError("method is private")
	RateLimiting                 = ProcessError("rate limiting")
	TokenNotFound                = NotFoundError("token not found")
	TooManyRoyaltyRecipients     = LengthError("cannot add more than 6 perpetual royalty amounts")
	TransactionInUse             = ProcessError("transaction already in use")
	TruncatedRecord              = LengthError("truncated record")
	UnknownMethod                = NotFoundError("unknown method")
	UnregisteredCertificate      = NotFoundError("client certificate is not registered")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
