// Package connectors provides the sources gazettes are read from.
// The filesystem connector discovers dated gazette files on local disk
// and watches the tree for new ones.
package connectors
