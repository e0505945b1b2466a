package app_info

// NAME name of the application
const NAME = "lanwarden"

// VERSION current version of the application
const VERSION = "v0.1.0"
