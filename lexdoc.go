// Package lexdoc acquires technical documentation from documentation sites
// and code-hosting APIs, splits it into size-bounded chunks, and answers
// free-text queries with lexically ranked passages suitable for technical
// English learning content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or function (e.g., goquery/, github/,
// crawl/, index/).
package lexdoc
