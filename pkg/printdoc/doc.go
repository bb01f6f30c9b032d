// Package printdoc turns a rendered lesson-plan view into a printable
// document. Bridge is the capability the form front ends call; HTMLRenderer
// produces a standalone A4 document that opens the platform print dialog on
// load, and WriterBridge/FileBridge deliver it to a response or a file.
//
// User text is printed verbatim and escaped by the template. Page geometry is
// fixed at A4 portrait with 24mm margins; PageStyle carries the typography and
// never depends on the on-screen presentation.
package printdoc
