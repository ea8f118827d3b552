// Package cansimple defines the CAN-Simple arbitration identifier and
// the frame type exchanged with a transport.
//
// CAN-Simple repurposes the 11-bit standard CAN identifier to address
// one axis and one command at a time:
//
//	bits 10..5  node    (axis address, 0-63)
//	bits  4..0  command (operation code, 0-31)
//
// Telemetry is solicited with a remote transmission request carrying
// the identifier of the wanted message; the device answers with a data
// frame under the same identifier. There are no sequence numbers: the
// identifier is the whole correlation key.
package cansimple
