// Package scaffold copies bundled preset directory trees into a project.
//
// A preset is a directory under presets/ holding a starter fragment layout,
// typically config/webpack.common.yaml plus one file per environment.
package scaffold
