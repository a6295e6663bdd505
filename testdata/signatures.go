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

// Package testdata holds shared fixtures for tests.
package testdata

// VisibleText is the plain text inside ValidSignature's usrVisibleData.
const VisibleText = "I approve the transfer of 100 SEK"

// ValidSignature is a signed-data document as returned in completion data,
// with the signature and certificate material shortened.
const ValidSignature = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<Signature xmlns="http://www.w3.org/2000/09/xmldsig#">
  <SignedInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
    <CanonicalizationMethod Algorithm="http://www.w3.org/TR/2001/REC-xml-c14n-20010315"></CanonicalizationMethod>
    <SignatureMethod Algorithm="http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"></SignatureMethod>
    <Reference Type="http://www.bankid.com/signature/v1.0.0/types" URI="#bidSignedData">
      <DigestMethod Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"></DigestMethod>
      <DigestValue>5wunwyz0FQuAGaCHohwNXU0s2wHpetntA2npYwQifRc=</DigestValue>
    </Reference>
  </SignedInfo>
  <SignatureValue>dGhpcyBpcyBub3QgYSByZWFsIHNpZ25hdHVyZSB2YWx1ZQ==</SignatureValue>
  <KeyInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
    <X509Data><X509Certificate>dGVzdCBjZXJ0aWZpY2F0ZQ==</X509Certificate></X509Data>
  </KeyInfo>
  <Object>
    <bankIdSignedData xmlns="http://www.bankid.com/signature/v1.0.0/types" Id="bidSignedData">
      <usrVisibleData charset="UTF-8" visible="wysiwys">SSBhcHByb3ZlIHRoZSB0cmFuc2ZlciBvZiAxMDAgU0VL</usrVisibleData>
      <usrNonVisibleData>b3JkZXJSZWY9YWJjMTIz</usrNonVisibleData>
      <srvInfo>
        <name>Y249VGVzdCBCYW5r</name>
        <nonce>dGVzdCBub25jZQ==</nonce>
        <displayName>VGVzdCBCYW5r</displayName>
      </srvInfo>
      <clientInfo>
        <funcId>Signing</funcId>
        <version>Ny4zMi4w</version>
        <env>
          <ai>
            <type>SU9T</type>
            <deviceInfo>MTYuNw==</deviceInfo>
            <uhi>dGVzdCB1aGk=</uhi>
            <fsib>0</fsib>
            <utb>cp1</utb>
          </ai>
        </env>
      </clientInfo>
    </bankIdSignedData>
  </Object>
</Signature>`

// IdentificationSignature is a signed-data document of an authentication
// order: no visible or non-visible user data.
const IdentificationSignature = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<Signature xmlns="http://www.w3.org/2000/09/xmldsig#">
  <SignedInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
    <CanonicalizationMethod Algorithm="http://www.w3.org/TR/2001/REC-xml-c14n-20010315"></CanonicalizationMethod>
    <SignatureMethod Algorithm="http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"></SignatureMethod>
    <Reference Type="http://www.bankid.com/signature/v1.0.0/types" URI="#bidSignedData">
      <DigestMethod Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"></DigestMethod>
      <DigestValue>aGFzaCBvZiBzaWduZWQgZGF0YQ==</DigestValue>
    </Reference>
  </SignedInfo>
  <SignatureValue>YW5vdGhlciBmYWtlIHNpZ25hdHVyZSB2YWx1ZQ==</SignatureValue>
  <Object>
    <bankIdSignedData xmlns="http://www.bankid.com/signature/v1.0.0/types" Id="bidSignedData">
      <srvInfo>
        <name>Y249VGVzdCBCYW5r</name>
        <nonce>dGVzdCBub25jZQ==</nonce>
        <displayName>VGVzdCBCYW5r</displayName>
      </srvInfo>
      <clientInfo>
        <funcId>Identification</funcId>
        <version>Ny4zMi4w</version>
        <env>
          <ai>
            <type>QU5EUk9JRA==</type>
            <deviceInfo>MTQ=</deviceInfo>
            <uhi>dGVzdCB1aGk=</uhi>
            <fsib>0</fsib>
            <utb>cp1</utb>
          </ai>
        </env>
      </clientInfo>
    </bankIdSignedData>
  </Object>
</Signature>`

// DoctypeSignature carries a doctype declaration and must be rejected.
const DoctypeSignature = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE Signature [<!ENTITY xxe SYSTEM "file:///etc/passwd">]>
<Signature xmlns="http://www.w3.org/2000/09/xmldsig#">
  <Object>
    <bankIdSignedData xmlns="http://www.bankid.com/signature/v1.0.0/types">
      <usrVisibleData>&xxe;</usrVisibleData>
    </bankIdSignedData>
  </Object>
</Signature>`
