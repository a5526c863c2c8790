// Package eodhd is the REST client for the EODHD end-of-day API. Records
// come back as raw JSON so the raw zone can land provider payloads verbatim;
// typing happens later, in the staging contract.
package eodhd
