// Package redist copies the Visual Studio runtime DLLs, the UCRT API-set
// shims from the Windows SDK and dbghelp.dll into a build output directory.
// Every file goes through filesync, so repeated runs only touch stale files.
package redist
