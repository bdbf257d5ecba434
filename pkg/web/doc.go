// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package web contains HTTP request and client configurations.
HTTPConfig embeds both of them and is the structure scrape jobs use,
so every job shares the same set of user configurable options.
*/
package web
