// Package modules loads helped modules on demand.
//
// A Loader owns every module of one check session. `help "geo";` in
// a/main.bonk looks for a/geo.bonk first, then geo.bonk in each help path.
// A loaded module is parsed, resolved and given its own inference engine;
// its diagnostics stay in its own Bag. Modules that help each other see
// each other's forward-declared names.
package modules
