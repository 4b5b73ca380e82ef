package domain

import "testing"

func testLayout() Layout {
	return Layout{
		WorkspaceRoot: "/ws",
		TargetDocsDir: "dev/docs",
		SourceDocsDir: ".dev/docs",
		ManifestName:  "migration-map.txt",
		Repositories: []Repository{
			{Name: "flovyn-server", DocsRoot: "/ws/flovyn-server/.dev/docs"},
			{Name: "flovyn-app", DocsRoot: "/ws/flovyn-app/.dev/docs"},
			{Name: "sdk-rust", DocsRoot: "/ws/sdk-rust/.dev/docs"},
			{Name: "sdk-kotlin", DocsRoot: "/ws/sdk-kotlin/.dev/docs"},
		},
		ExtraPrefixes:  []string{"sdk-python", "dev"},
		Categories:     []string{"design", "plans", "research", "bugs", "guides", "architecture", "archive"},
		CodeExtensions: []string{".rs", ".ts", ".tsx", ".py", ".kt", ".toml", ".sql", ".md", ".sh", ".json", ".yaml", ".yml"},
	}
}

func TestCodeRefNormalizer_Normalize(t *testing.T) {
	n := NewCodeRefNormalizer(testLayout())

	tests := []struct {
		name string
		ref  string
		repo string
		want string
	}{
		{"repository relative", "src/handler.rs", "flovyn-server", "flovyn-server/src/handler.rs"},
		{"parent traversal", "../../src/lib.rs", "sdk-rust", "sdk-rust/src/lib.rs"},
		{"already qualified", "sdk-kotlin/src/Main.kt", "sdk-rust", "sdk-kotlin/src/Main.kt"},
		{"extra prefix", "sdk-python/flovyn/client.py", "sdk-rust", "sdk-python/flovyn/client.py"},
		{"workspace absolute", "/ws/flovyn-app/src/index.ts", "sdk-rust", "flovyn-app/src/index.ts"},
		{"bare filename", "Cargo.toml", "sdk-rust", "Cargo.toml"},
		{"dot relative", "./scripts/build.sh", "flovyn-app", "./scripts/build.sh"},
		{"unknown extension", "cmd/main.go", "flovyn-server", "cmd/main.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.ref, tt.repo); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.ref, tt.repo, got, tt.want)
			}
		})
	}
}

func TestCodeRefNormalizer_IsCodeRef(t *testing.T) {
	n := NewCodeRefNormalizer(testLayout())

	tests := []struct {
		ref  string
		want bool
	}{
		{"src/lib.rs", true},
		{"app/page.tsx", true},
		{"config.yaml", true},
		{"cmd/main.go", false},
		{"Makefile", false},
		{".env", false},
		{"dir.d/README", false},
	}

	for _, tt := range tests {
		if got := n.IsCodeRef(tt.ref); got != tt.want {
			t.Errorf("IsCodeRef(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
