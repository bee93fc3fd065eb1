// Package buildfile parses Starlark-syntax dependency descriptions.
//
// A description is a sequence of calls, one per declaration:
//
//	GUAVA_VERSION = "23.0"
//
//	compile("com.google.guava:guava:" + GUAVA_VERSION, transitivity = "none")
//	compile_only("org.projectlombok:lombok:1.18.30")
//	runtime_only("org.postgresql:postgresql")
//	test(["junit:junit:4.13", "org.mockito:mockito-core:2.10.0"])
//	file("libs/vendor.jar", scope = "compile_only")
//
//	version("org.postgresql:postgresql:42.2.19")
//	bom("org.junit:junit-bom::pom:5.10.0")
//	exclude("commons-logging:commons-logging")
//
// compile declares dependencies needed to compile and to run. Top-level string
// assignments can be referenced by later calls. Unknown calls produce warnings;
// malformed arguments produce errors carrying file:line:col positions.
// The result is a [declfile.Declarations], the same shape the text format produces.
package buildfile
