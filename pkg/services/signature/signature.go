/*
 * Nuts bankid
 * Copyright (C) 2020. Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package signature extracts the signed fields from the XML digital
// signature embedded in BankID completion data.
package signature

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/nuts-foundation/nuts-bankid/pkg/models"
)

// ErrSignatureMalformed is returned when the signature blob cannot be decoded
// or parsed as XML. It is never used for fields that are merely absent, since
// a broken document and a missing field carry different trust weight.
var ErrSignatureMalformed = errors.New("malformed digital signature")

// The two namespaces the signed-data document uses: the generic XML
// signature schema and the BankID signed-data schema.
var bidNamespaces = map[string]string{
	"digsig": "http://www.w3.org/2000/09/xmldsig#",
	"bidsig": "http://www.bankid.com/signature/v1.0.0/types",
}

const signedDataPath = "/digsig:Signature/digsig:Object/bidsig:bankIdSignedData"

var (
	signatureUsageQuery     = mustCompileWithNS(signedDataPath + "/bidsig:clientInfo/bidsig:funcId")
	userVisibleDataQuery    = mustCompileWithNS(signedDataPath + "/bidsig:usrVisibleData")
	userNonVisibleDataQuery = mustCompileWithNS(signedDataPath + "/bidsig:usrNonVisibleData")
)

// doctype declarations are not allowed in signed-data documents
var doctypePattern = regexp.MustCompile(`(?i)<!DOCTYPE`)

func mustCompileWithNS(query string) *xpath.Expr {
	expr, err := xpath.CompileWithNS(query, bidNamespaces)
	if err != nil {
		panic(err)
	}
	return expr
}

// DigitalSignature holds the fields extracted from a signed-data document.
// Fields the document does not carry are left empty.
type DigitalSignature struct {
	// SignatureUsage is Identification or Signing.
	SignatureUsage string
	// UserVisibleData is the base64 encoded text the user saw and approved.
	UserVisibleData string
	// UserNonVisibleData is the base64 encoded data signed without display.
	UserNonVisibleData string
}

// ParseDigitalSignature decodes and parses a base64 encoded signed-data
// document. encoding/xml never resolves external entities or DTDs, and
// documents carrying a doctype declaration are rejected outright.
func ParseDigitalSignature(xmlSignatureB64 models.Base64String) (*DigitalSignature, error) {
	raw, err := base64.StdEncoding.DecodeString(xmlSignatureB64.String())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 encoding: %v", ErrSignatureMalformed, err)
	}

	document := string(raw)
	if doctypePattern.MatchString(document) {
		return nil, fmt.Errorf("%w: doctype declarations are not allowed", ErrSignatureMalformed)
	}

	doc, err := xmlquery.Parse(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid xml: %v", ErrSignatureMalformed, err)
	}
	if xmlquery.FindOne(doc, "*") == nil {
		return nil, fmt.Errorf("%w: no document element", ErrSignatureMalformed)
	}

	return &DigitalSignature{
		SignatureUsage:     queryText(doc, signatureUsageQuery),
		UserVisibleData:    queryText(doc, userVisibleDataQuery),
		UserNonVisibleData: queryText(doc, userNonVisibleDataQuery),
	}, nil
}

func queryText(doc *xmlquery.Node, query *xpath.Expr) string {
	node := xmlquery.QuerySelector(doc, query)
	if node == nil {
		return ""
	}
	return node.InnerText()
}
