package collector

import "testing"

func TestCleanTextStripsMarkupAndEntities(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"<![CDATA[<p>STF decide  sobre X</p>]]>", "STF decide sobre X"},
		{"Tribunal&nbsp;julga &amp; decide", "Tribunal julga & decide"},
		{"<b>Embargos</b>\n\tde <i>declaração</i>", "Embargos de declaração"},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := cleanText(c.in); got != c.want {
			t.Errorf("cleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFirstImgSrcFindsFirstImage(t *testing.T) {
	frag := `texto <img src="https://a.com/1.jpg"/> mais <img src="https://a.com/2.jpg">`
	if got := firstImgSrc(frag); got != "https://a.com/1.jpg" {
		t.Fatalf("firstImgSrc = %q, want first image", got)
	}

	encoded := `&lt;img src=&quot;https://a.com/enc.png&quot;/&gt;resumo`
	if got := firstImgSrc(encoded); got != "https://a.com/enc.png" {
		t.Fatalf("firstImgSrc on encoded fragment = %q", got)
	}

	if got := firstImgSrc("sem imagem nenhuma"); got != "" {
		t.Fatalf("firstImgSrc on plain text = %q, want empty", got)
	}
}

func TestLooksLikeImage(t *testing.T) {
	yes := []string{
		"https://a.com/foto.jpg",
		"https://a.com/foto.PNG?w=300",
		"/img/capa.webp",
	}
	no := []string{
		"https://a.com/artigo.html",
		"https://a.com/audio.mp3",
		"",
	}
	for _, u := range yes {
		if !looksLikeImage(u) {
			t.Errorf("looksLikeImage(%q) = false, want true", u)
		}
	}
	for _, u := range no {
		if looksLikeImage(u) {
			t.Errorf("looksLikeImage(%q) = true, want false", u)
		}
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		raw, base, want string
	}{
		{"https://a.com/x.jpg", "https://b.com", "https://a.com/x.jpg"},
		{"/img/foo.jpg", "https://example.com/news/1", "https://example.com/img/foo.jpg"},
		{"//cdn.a.com/x.jpg", "https://example.com/news/1", "https://cdn.a.com/x.jpg"},
		{"", "https://a.com", ""},
	}
	for _, c := range cases {
		if got := ResolveURL(c.raw, c.base); got != c.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", c.raw, c.base, got, c.want)
		}
	}
}
