// Package download runs playlist downloads sequentially and relays progress.
// One video downloads at a time; pause, resume, and cancel act per item or
// on the whole playlist through each item's control gate.
package download
