package main

// siteContent is the home page, top to bottom. The order here is also the
// order of the navigation.
func siteContent(maxPosts int) (*Registry, error) {
	reg := newRegistry()

	sections := []Section{
		{
			ID:    "about",
			Title: "About",
			Body:  Fragment("Hi, I'm Sandro. I like to code, cook and learn new stuff."),
		},
		{
			ID:    "projects",
			Title: "Personal Projects",
			Body: Projects{
				{Href: "/recipes", Title: "My personal recipe collection", Image: "recipes"},
				{Href: "/series", Title: "The status of my series", Image: "series"},
				{Href: "https://github.com/Sandr0x00/find-the-chicken", Title: "My CTF gameboy challenge", Image: "find-the-chicken.png"},
			},
		},
		{
			ID:    "web",
			Title: "Web Development",
			Body: Projects{
				{Href: "https://www.michael-konstantin.de/", Title: "Website for Michael Konstantin", Image: "michael-konstantin"},
				{Href: "https://almenrausch-pirkhof.de", Title: "Website for Almenrausch Pirkhof Schützenverein Pirkhof", Image: "almenrausch-pirkhof"},
				{Href: "http://juliagruber.de", Title: "Website for Julia Gruber", Image: "juliagruber"},
				{Href: "https://doktor-eisenbarth.de", Title: "Website for Doktor Eisenbarth Festspielverein Oberviechtach", Image: "doktor-eisenbarth"},
			},
		},
		{
			ID:    "fun",
			Title: "Fun",
			Body: Links{
				{
					Href:    "#",
					Text:    "This link may segfault your Chrome Tab",
					OnClick: "function f(){}var a=f;for(var b=0;b<100000;++b){a=a.bind();Object.defineProperty(a,Symbol.hasInstance,{})}({})instanceof a;",
					Note:    `(Ref: <a href="https://twitter.com/GuidoVranken/status/1271059248861138944">@GuidoVranken</a>)`,
				},
			},
		},
		{
			ID:    "ctf",
			Title: "CTF Writeups",
			Body: Writeups{
				{Name: "2020", Entries: []Writeup{
					{Event: "0CTF 2020 Qual", Title: "Cloud Computing", Href: "https://hxp.io/blog/74/0CTF%202020%20writeups/#cloud-computing", Category: "web"},
					{Event: "Plaid CTF 2020", Title: "Bonzi Scheme", Href: "https://hxp.io/blog/71/PlaidCTF-2020-Bonzi-Scheme/", Category: "web"},
				}},
				{Name: "2019", Entries: []Writeup{
					{Event: "Teaser Dragon CTF 2019", Title: "PlayCAP", Href: "https://hxp.io/blog/59/Teaser-Dragon-CTF-2019-PlayCAP-writeup/", Category: "misc"},
				}},
			},
		},
		{
			ID:    "blog",
			Title: "Blog",
			Body:  PostList{Limit: maxPosts},
		},
	}

	for _, s := range sections {
		if err := reg.add(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
