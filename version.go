package lattice

// Version is the current release of the lattice module.
const Version = "0.3.0"
