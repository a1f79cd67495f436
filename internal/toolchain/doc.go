// Package toolchain locates the Visual Studio installation, the Windows SDK
// and the versioned MSVC tools directory on a build host.
//
// A Session carries the invocation's Config and memoizes each resolved root,
// so the first successful lookup is reused by every later step of the same
// run without touching the process environment.
package toolchain
