// Package declfile reads dependency declarations from a flat text file or from a
// directory of jars.
//
// The text format groups one coordinate description per line under section headers:
//
//	# comments and blank lines are ignored
//	== REGULAR ==
//	com.google.guava:guava:23.0
//	== COMPILE_ONLY ==
//	org.projectlombok:lombok:1.18.30
//	== RUNTIME_ONLY ==
//	org.postgresql:postgresql
//	== TEST ==
//	org.mockito:mockito-core:2.10.0
//	== VERSIONS ==
//	org.postgresql:postgresql:42.2.19
//	org.junit:junit-bom::pom:5.10.0
//
// Headers are matched case-insensitively and unknown headers fall back to
// REGULAR. Lines under VERSIONS pin versions instead of declaring dependencies;
// a pom-typed line imports a bill of materials.
//
// The directory layout uses one subdirectory per bucket, each holding jars:
//
//	<dir>/regular/*.jar
//	<dir>/compile_only/*.jar
//	<dir>/runtime_only/*.jar
//	<dir>/test/*.jar
package declfile
