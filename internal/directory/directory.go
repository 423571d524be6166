// Package directory provides read access to the doctor, user and crop
// documents kept in the document store. It has no HTTP surface of its own;
// the diagnosis and mandi modules consume its repository.
package directory
