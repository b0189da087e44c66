// Package commands defines the slide CLI.
//
// Commands
//
//   - run            Open the interactive slider board (also the default)
//   - init           Write a slider config through an interactive form
//   - print          Render the board once to stdout
//   - export         Save the board as SVG and PNG images
//
// Settings come from SLIDE_* environment variables; flags override them.
package commands
