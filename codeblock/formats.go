package codeblock

// Formats is the list of format identifiers accepted by Pastebin.
var Formats = []string{
	"4cs",
	"6502acme",
	"6502kickass",
	"6502tasm",
	"abap",
	"actionscript",
	"actionscript3",
	"ada",
	"aimms",
	"algol68",
	"apache",
	"applescript",
	"apt_sources",
	"arm",
	"asm",
	"asp",
	"asymptote",
	"autoconf",
	"autohotkey",
	"autoit",
	"avisynth",
	"awk",
	"bascomavr",
	"bash",
	"basic4gl",
	"dos",
	"bibtex",
	"blitzbasic",
	"b3d",
	"bmx",
	"bnf",
	"boo",
	"bf",
	"c",
	"c_winapi",
	"c_mac",
	"cil",
	"csharp",
	"cpp",
	"cpp-winapi",
	"cpp-qt",
	"c_loadrunner",
	"caddcl",
	"cadlisp",
	"ceylon",
	"cfdg",
	"chaiscript",
	"chapel",
	"clojure",
	"klonec",
	"klonecpp",
	"cmake",
	"cobol",
	"coffeescript",
	"cfm",
	"css",
	"cuesheet",
	"d",
	"dart",
	"dcl",
	"dcpu16",
	"dcs",
	"delphi",
	"oxygene",
	"diff",
	"div",
	"dot",
	"e",
	"ezt",
	"ecmascript",
	"eiffel",
	"email",
	"epc",
	"erlang",
	"euphoria",
	"fsharp",
	"falcon",
	"filemaker",
	"fo",
	"f1",
	"fortran",
	"freebasic",
	"freeswitch",
	"gambas",
	"gml",
	"gdb",
	"genero",
	"genie",
	"gettext",
	"go",
	"groovy",
	"gwbasic",
	"haskell",
	"haxe",
	"hicest",
	"hq9plus",
	"html4strict",
	"html5",
	"icon",
	"idl",
	"ini",
	"inno",
	"intercal",
	"io",
	"ispfpanel",
	"j",
	"java",
	"java5",
	"javascript",
	"jcl",
	"jquery",
	"json",
	"julia",
	"kixtart",
	"kotlin",
	"latex",
	"ldif",
	"lb",
	"lsl2",
	"lisp",
	"llvm",
	"locobasic",
	"logtalk",
	"lolcode",
	"lotusformulas",
	"lotusscript",
	"lscript",
	"lua",
	"m68k",
	"magiksf",
	"make",
	"mapbasic",
	"markdown",
	"matlab",
	"mirc",
	"mmix",
	"modula2",
	"modula3",
	"68000devpac",
	"mpasm",
	"mxml",
	"mysql",
	"nagios",
	"netrexx",
	"newlisp",
	"nginx",
	"nim",
	"text",
	"nsis",
	"oberon2",
	"objeck",
	"objc",
	"ocaml-brief",
	"ocaml",
	"octave",
	"oorexx",
	"pf",
	"glsl",
	"oobas",
	"oracle11",
	"oracle8",
	"oz",
	"parasail",
	"parigp",
	"pascal",
	"pawn",
	"pcre",
	"per",
	"perl",
	"perl6",
	"php",
	"php-brief",
	"pic16",
	"pike",
	"pixelbender",
	"pli",
	"plsql",
	"postgresql",
	"postscript",
	"povray",
	"powerbuilder",
	"powershell",
	"proftpd",
	"progress",
	"prolog",
	"properties",
	"providex",
	"puppet",
	"purebasic",
	"pycon",
	"python",
	"pys60",
	"q",
	"qbasic",
	"qml",
	"rsplus",
	"racket",
	"rails",
	"rbs",
	"rebol",
	"reg",
	"rexx",
	"robots",
	"rpmspec",
	"ruby",
	"gnuplot",
	"rust",
	"sas",
	"scala",
	"scheme",
	"scilab",
	"scl",
	"sdlbasic",
	"smalltalk",
	"smarty",
	"spark",
	"sparql",
	"sqf",
	"sql",
	"standardml",
	"stonescript",
	"sclang",
	"swift",
	"systemverilog",
	"tsql",
	"tcl",
	"teraterm",
	"thinbasic",
	"typoscript",
	"unicon",
	"uscript",
	"upc",
	"urbi",
	"vala",
	"vbnet",
	"vbscript",
	"vedit",
	"verilog",
	"vhdl",
	"vim",
	"visualprolog",
	"vb",
	"visualfoxpro",
	"whitespace",
	"whois",
	"winbatch",
	"xbasic",
	"xml",
	"xorg_conf",
	"xpp",
	"yaml",
	"z80",
	"zxbasic",
}

// aliases maps common chat shorthands to Pastebin format identifiers.
var aliases = map[string]string{
	"js":     "javascript",
	"ts":     "javascript",
	"jsx":    "javascript",
	"py":     "python",
	"py3":    "python",
	"sh":     "bash",
	"shell":  "bash",
	"zsh":    "bash",
	"c++":    "cpp",
	"cs":     "csharp",
	"c#":     "csharp",
	"rb":     "ruby",
	"rs":     "rust",
	"golang": "go",
	"md":     "markdown",
	"yml":    "yaml",
	"kt":     "kotlin",
	"ps1":    "powershell",
	"html":   "html5",
	"htm":    "html5",
}

var formatSet = func() map[string]bool {
	m := make(map[string]bool, len(Formats))
	for _, f := range Formats {
		m[f] = true
	}
	return m
}()

// IsFormat reports whether f is a Pastebin format identifier, ignoring case.
func IsFormat(f string) bool {
	return formatSet[fold(f)]
}

// Lookup resolves a language tag or alias to its Pastebin format identifier.
func Lookup(tag string) (string, bool) {
	t := fold(tag)
	if formatSet[t] {
		return t, true
	}
	f, ok := aliases[t]
	return f, ok
}
