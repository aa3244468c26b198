// Package config loads the render worker settings from the environment.
//
// Every field has a development default, so an empty environment yields a
// worker reading templates from ./templates, locales from ./locales and
// requests from the "view.render" stream on localhost Redis.
//
//	TEMPLATE_ROOT    root directory holding .hbs and .rtpl templates
//	LOCALES_DIR      directory of <locale>.yaml message catalogs
//	DEFAULT_LOCALE   locale used when a request carries none
//	STREAM_KEY       stream render requests are read from
//	RESULT_STREAM    stream rendered output is published to
//	DATA_KEY_PREFIX  key prefix of JSON view data referenced by data_key
//
// Load validates the result; a worker never starts with a partial config.
package config
