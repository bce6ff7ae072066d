// Package api is the public wire contract of the kitchen POS: request and response
// messages, procedure names, the JSON codec, and Connect handler and client
// constructors for every service.
//
// Messages travel as JSON with the Connect protocol. Prices are decimal strings
// ("16000.00"); numbers are accepted on input.
package api
