package framework

// Capabilities is a list of strings representing optional features of a repository
// service. The meanings of the strings are defined by the repository service protocol;
// see the repodef package for the constants used in this project.
type Capabilities []string

// Has returns true if the specified string appears in the list.
func (cs Capabilities) Has(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}
