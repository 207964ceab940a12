// Package report renders scan reports for people and for tools.
//
// Three writers share one interface: JSONWriter emits the durable JSON
// document other tools consume, MarkdownWriter renders a shareable
// document, and TextWriter prints a terminal summary. A MultiWriter fans
// one report out to several destinations, and Snapshot persists the
// write-once JSON record of a completed scan.
package report
