// Package catalog models a restaurant's menu: categories with their daily
// ordering windows and the priced menu items filed under them.
package catalog
