package formtree

// Version is the formtree library version.
const Version = "0.1.0"
