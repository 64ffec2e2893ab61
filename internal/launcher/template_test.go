package launcher

import "testing"

func TestRenderCommand_Fields(t *testing.T) {
	argv, err := renderCommand("alacritty --working-directory {{.Path}} --title {{.Name}}", commandData{
		Path: "/p/shop",
		Name: "shop",
	})
	if err != nil {
		t.Fatalf("renderCommand() error = %v", err)
	}

	want := []string{"alacritty", "--working-directory", "/p/shop", "--title", "shop"}
	if len(argv) != len(want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Fatalf("argv = %v, want %v", argv, want)
		}
	}
}

func TestRenderCommand_QuotedSpaces(t *testing.T) {
	argv, err := renderCommand(`code {{.Path | quote}}`, commandData{Path: "/p/My Project"})
	if err != nil {
		t.Fatalf("renderCommand() error = %v", err)
	}

	if len(argv) != 2 || argv[1] != "/p/My Project" {
		t.Fatalf("argv = %v", argv)
	}
}

func TestRenderCommand_WSLPathField(t *testing.T) {
	argv, err := renderCommand("wsl --cd {{.WSLPath}}", commandData{
		Path:    `C:\Users\me\proj`,
		WSLPath: ToWSLPath(`C:\Users\me\proj`),
	})
	if err != nil {
		t.Fatalf("renderCommand() error = %v", err)
	}

	if argv[2] != "/mnt/c/Users/me/proj" {
		t.Fatalf("argv = %v", argv)
	}
}

func TestRenderCommand_InvalidTemplate(t *testing.T) {
	if _, err := renderCommand("{{.Path", commandData{}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRenderCommand_EmptyResult(t *testing.T) {
	if _, err := renderCommand("   ", commandData{}); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestSplitCommand_MixedQuotes(t *testing.T) {
	argv := splitCommand(`tool "a b" 'c d' plain`)

	want := []string{"tool", "a b", "c d", "plain"}
	if len(argv) != len(want) {
		t.Fatalf("argv = %v", argv)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Fatalf("argv = %v", argv)
		}
	}
}
